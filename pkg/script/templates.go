package script

// Fragment templates keyed by tool name. Substitution is textual: every
// {name} placeholder must have a matching key in the processed parameters.
// The surrounding newlines matter; Compose relies on them to separate
// fragments with a blank line, matching the host application's expectations.

const createSketchTemplate = `
# Create a new sketch on the {plane} plane
sketches = component.sketches
{plane_code}
sketch = sketches.add({plane_var})
`

const drawRectangleTemplate = `
# Draw a rectangle
rectangle = sketch.sketchCurves.sketchLines.addTwoPointRectangle(
    adsk.core.Point3D.create({origin_x}, {origin_y}, {origin_z}),
    adsk.core.Point3D.create({origin_x} + {width}, {origin_y} + {depth}, {origin_z})
)
`

const drawCircleTemplate = `
# Draw a circle
circle = sketch.sketchCurves.sketchCircles.addByCenterRadius(
    adsk.core.Point3D.create({center_x}, {center_y}, {center_z}),
    {radius}
)
`

const extrudeTemplate = `
# Extrude the profile
prof = sketch.profiles.item({profile_index})
extrudes = component.features.extrudeFeatures
extInput = extrudes.createInput(prof, adsk.fusion.FeatureOperations.{operation_code}FeatureOperation)
distance = adsk.core.ValueInput.createByReal({height})
extInput.setDistanceExtent(False, distance)
extrude = extrudes.add(extInput)
`

const revolveTemplate = `
# Revolve the profile
prof = sketch.profiles.item({profile_index})
revolves = component.features.revolveFeatures
revInput = revolves.createInput(prof, adsk.fusion.FeatureOperations.{operation_code}FeatureOperation)
axis = adsk.core.Line3D.create(
    adsk.core.Point3D.create({axis_origin_x}, {axis_origin_y}, {axis_origin_z}),
    adsk.core.Vector3D.create({axis_direction_x}, {axis_direction_y}, {axis_direction_z})
)
revInput.setRevolutionExtent(False, adsk.core.ValueInput.createByString("{angle} deg"))
revInput.revolutionAxis = axis
revolve = revolves.add(revInput)
`

const filletTemplate = `
# Fillet edges
fillets = component.features.filletFeatures
edgeCollection = adsk.core.ObjectCollection.create()
body = component.bRepBodies.item({body_index})
{edge_collection_code}
filletInput = fillets.createInput()
filletInput.addConstantRadiusEdgeSet(edgeCollection, adsk.core.ValueInput.createByReal({radius}), True)
fillet = fillets.add(filletInput)
`

const chamferTemplate = `
# Chamfer edges
chamfers = component.features.chamferFeatures
edgeCollection = adsk.core.ObjectCollection.create()
body = component.bRepBodies.item({body_index})
{edge_collection_code}
chamferInput = chamfers.createInput(edgeCollection, True)
chamferInput.setToEqualDistance(adsk.core.ValueInput.createByReal({distance}))
chamfer = chamfers.add(chamferInput)
`

const shellTemplate = `
# Shell the body
shells = component.features.shellFeatures
body = component.bRepBodies.item({body_index})
faceCollection = adsk.core.ObjectCollection.create()
{face_collection_code}
shellInput = shells.createInput([body], faceCollection)
shellInput.insideThickness = adsk.core.ValueInput.createByReal({thickness})
shell = shells.add(shellInput)
`

const combineTemplate = `
# Combine bodies
combines = component.features.combineFeatures
targetBody = component.bRepBodies.item({target_body_index})
toolBodies = adsk.core.ObjectCollection.create()
toolBody = component.bRepBodies.item({tool_body_index})
toolBodies.add(toolBody)
combineInput = combines.createInput(targetBody, toolBodies)
combineInput.operation = adsk.fusion.FeatureOperations.{operation_code}FeatureOperation
combine = combines.add(combineInput)
`

const exportBodyTemplate = `
# Export body
body = component.bRepBodies.item({body_index})
exportMgr = adsk.fusion.ExportManager.cast(design.exportManager)
{export_options_code}
exportMgr.execute('{filename}', '{directory}', options)
`

const loftProfilesTemplate = `
# Loft profiles
profiles = []
{profile_collection_code}
lofts = component.features.loftFeatures
loftInput = lofts.createInput(adsk.fusion.FeatureOperations.{operation_code}FeatureOperation)
loftInput.loftSections.addProfiles(profiles)
{closed_code}
loft = lofts.add(loftInput)
`

// baseScaffold is the fixed outer program every request is wrapped in. The
// wrapper text is a compatibility contract with the host application:
// acquire the application handle, resolve the active design and root
// component, run the composed body, then report success or the captured
// traceback through the message box facility.
const baseScaffold = `import adsk.core, adsk.fusion, traceback

def run(context):
    ui = None
    try:
        app = adsk.core.Application.get()
        ui = app.userInterface
        design = app.activeProduct

        # Get the active component in the design
        component = design.rootComponent

{tool_scripts}

        ui.messageBox('Operation completed successfully')
    except:
        if ui:
            ui.messageBox('Failed:\n{}'.format(traceback.format_exc()))
`

// bodyPlaceholder marks where the composed fragment body is inserted into
// the scaffold. It is replaced literally, never interpolated.
const bodyPlaceholder = "{tool_scripts}"
